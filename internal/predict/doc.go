// Package predict implements the prediction request flow.
//
// A submission goes through four steps:
//  1. ParseFeatures turns the 13 raw text fields into a FeatureVector,
//     substituting 0 for anything empty, non-numeric or non-finite.
//  2. The vector is sent to the prediction backend by a Predictor
//     (normally a Client) as a single POST with no retry.
//  3. The returned value, denominated in thousands, is converted to a
//     display string by a Formatter (e.g. 24.5 becomes "$24,500").
//  4. Any failure is converted into a failed model.PredictionResult
//     carrying a readable message. Nothing escapes as an error.
//
// Flow ties these steps together. BatchSubmitter runs many independent
// submissions concurrently; results are never deduplicated or cached.
//
// # Usage
//
//	client, err := predict.NewClient("http://localhost:5000")
//	formatter, err := predict.NewFormatter("en-US", "$")
//	flow := predict.NewFlow(client, formatter)
//
//	result := flow.Submit(ctx, predict.SampleFields())
//	fmt.Println(result) // "$24,000" or a failure message
package predict
