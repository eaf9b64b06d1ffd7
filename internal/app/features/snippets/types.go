// internal/app/features/snippets/types.go
package snippets

type createRequest struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

type editRequest struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

type commentRequest struct {
	Text string `json:"text"`
}
