package predict

import "github.com/nao1215/housepred/internal/model"

// SampleFields returns a canonical example property. It is used to
// demonstrate the prediction form without typing in 13 values.
func SampleFields() model.RawFields {
	return model.RawFields{
		model.FeatureCRIM:    "0.00632",
		model.FeatureZN:      "18.0",
		model.FeatureINDUS:   "2.31",
		model.FeatureCHAS:    "0",
		model.FeatureNOX:     "0.538",
		model.FeatureRM:      "6.575",
		model.FeatureAge:     "65.2",
		model.FeatureDIS:     "4.09",
		model.FeatureRAD:     "1",
		model.FeatureTAX:     "296",
		model.FeaturePTRATIO: "15.3",
		model.FeatureB:       "396.9",
		model.FeatureLSTAT:   "4.98",
	}
}
