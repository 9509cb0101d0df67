package band

import "net/url"

// Paging is the opaque continuation cursor a listing endpoint returns.
// NextParams is a bag of key/value strings that must be replayed verbatim
// into the next request's query parameters; the client does not interpret
// or reorder its keys. A nil Paging means the listing is exhausted.
type Paging struct {
	NextParams map[string]string `json:"next_params"`
}

// HasNext reports whether another page exists.
func (p *Paging) HasNext() bool {
	return p != nil && len(p.NextParams) > 0
}

// apply merges the cursor into outgoing query parameters.
func (p *Paging) apply(params url.Values) {
	if p == nil {
		return
	}
	for key, value := range p.NextParams {
		params.Set(key, value)
	}
}

// pagingJSON is the result_data.paging shape.
type pagingJSON struct {
	NextParams map[string]string `json:"next_params"`
}

// nextPaging converts a parsed paging block into the caller-facing cursor,
// collapsing an empty next_params to nil.
func nextPaging(j *pagingJSON) *Paging {
	if j == nil || len(j.NextParams) == 0 {
		return nil
	}
	return &Paging{NextParams: j.NextParams}
}
