package yahoo

// chartResponse mirrors the v8 chart endpoint payload. Quote arrays stay
// untyped so that null entries survive until normalization.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		DataGranularity      string `json:"dataGranularity"`
		Range                string `json:"range"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []interface{} `json:"open"`
			High   []interface{} `json:"high"`
			Low    []interface{} `json:"low"`
			Close  []interface{} `json:"close"`
			Volume []interface{} `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}
