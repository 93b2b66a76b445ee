package file

type FileResponse struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"owner_id"`
	Category     string  `json:"category"`
	OriginalName string  `json:"original_name"`
	MimeType     string  `json:"mime_type"`
	Size         int64   `json:"size"`
	RelatedType  *string `json:"related_type,omitempty"`
	RelatedID    *string `json:"related_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(f File) FileResponse {
	var relatedType *string
	if f.RelatedType != nil {
		s := string(*f.RelatedType)
		relatedType = &s
	}

	return FileResponse{
		ID:           f.ID,
		OwnerID:      f.OwnerID,
		Category:     string(f.Category),
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		RelatedType:  relatedType,
		RelatedID:    f.RelatedID,
		CreatedAt:    f.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
