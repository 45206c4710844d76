package domain

// FetchStatus tags the three outcomes a fetch adapter can report.
type FetchStatus int

const (
	// FetchFailed covers transport, credential and malformed-response failures.
	FetchFailed FetchStatus = iota
	// FetchNoData means the supplier confirmed no content exists for the ID.
	FetchNoData
	// FetchSuccess carries a payload to persist verbatim.
	FetchSuccess
)

func (s FetchStatus) String() string {
	switch s {
	case FetchSuccess:
		return "success"
	case FetchNoData:
		return "no_data"
	default:
		return "failed"
	}
}

// FetchResult is returned by every fetch adapter. Payload is set only on
// FetchSuccess; Reason is set on FetchFailed.
type FetchResult struct {
	Status  FetchStatus
	Payload any
	Reason  string
}

func FetchOK(payload any) FetchResult { return FetchResult{Status: FetchSuccess, Payload: payload} }

func FetchNotFound() FetchResult { return FetchResult{Status: FetchNoData} }

func FetchError(reason string) FetchResult { return FetchResult{Status: FetchFailed, Reason: reason} }

// Push statuses reported per hotel ID by the batch push endpoint.
const (
	PushSaved        = "saved"
	PushNoData       = "failed:no_data_found"
	PushFetchFailed  = "failed:fetch_failed_or_missing_credentials"
	PushSaveFailed   = "failed:save_failed"
	PushInvalidInput = "failed:invalid_hotel_id"
)

// PushResult is the per-ID outcome of a push.
type PushResult struct {
	HotelID string `json:"hotel_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Path    string `json:"path,omitempty"`
}

// PushReport is the response of one batch push.
type PushReport struct {
	Supplier string       `json:"supplier"`
	Results  []PushResult `json:"results"`
}
