package interpret

import "github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"

// Merge picks the working filter: the model filter wins whenever it has any
// field, otherwise the preprocessed filter is used.
func Merge(model filter.Model, pre filter.Preprocessed) filter.Model {
	if !model.IsEmpty() {
		return model
	}
	return pre.AsModel()
}
