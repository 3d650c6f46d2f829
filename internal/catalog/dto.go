package catalog

// PartDTO is one catalog part as surfaced to the client.
type PartDTO struct {
	PartNum  string  `json:"part_num"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

// PartImageRequest identifies one part/color pair to resolve an image for.
type PartImageRequest struct {
	PartNum   string `json:"part_num" validate:"required,min=1,max=32"`
	ColorName string `json:"color_name" validate:"omitempty,max=64"`
}

// PartImagesInput is the batch payload for image resolution.
type PartImagesInput struct {
	Parts []PartImageRequest `json:"parts" validate:"required,min=1,max=100,dive"`
}

// PartImagesResult maps "part_num::normalized_color" to an image URL, or nil
// when the catalog has no image for the pair.
type PartImagesResult map[string]*string
