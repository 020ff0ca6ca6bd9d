package dto

type CleanupResponse struct {
	Expired       []string `json:"expired"`
	Evicted       []string `json:"evicted"`
	FreedSize     int      `json:"freed_size"`
	RemainingSize int      `json:"remaining_size"`
	Histories     int      `json:"histories"`
}
