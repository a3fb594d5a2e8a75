package handlers

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse            = Response{}
	BadCollectionResponse = Response{"unknown favorites type"}
	BadExtraResponse      = Response{"extra must be a JSON object"}
	NotFoundResponse      = Response{"not found"}
	ThumbFailedResponse   = Response{"cannot create thumbnail"}
)
