// Package model defines the data structures shared by housepred packages.
//
// This package contains the following main types:
//   - FeatureVector: the 13 numeric inputs sent to the prediction backend
//   - PredictionResult: the success or failure outcome of one request
//   - PredictionReport: one submission with its inputs, for output
//   - UserProfile: the identity record kept in local storage
//
// The types carry JSON tags so they can be written to reports and stored.
package model
