package models

import "time"

type Project struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Images      []Image   `bson:"images" json:"images"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Image is embedded in its Project. Width and Height describe the stored,
// resized asset rather than the original upload.
type Image struct {
	ID           string    `bson:"id" json:"id"`
	Filename     string    `bson:"filename" json:"filename"`
	OriginalName string    `bson:"originalName" json:"originalName"`
	URL          string    `bson:"url" json:"url"`
	Size         int64     `bson:"size" json:"size"`
	MimeType     string    `bson:"mimeType" json:"mimeType"`
	Width        int       `bson:"width" json:"width"`
	Height       int       `bson:"height" json:"height"`
	UploadedAt   time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// FindImage returns the image with the given id, or false.
func (p *Project) FindImage(imageID string) (Image, bool) {
	for _, img := range p.Images {
		if img.ID == imageID {
			return img, true
		}
	}
	return Image{}, false
}

// WithImage returns a copy of the image list with img appended.
// The receiver's slice is never mutated.
func (p *Project) WithImage(img Image) []Image {
	images := make([]Image, 0, len(p.Images)+1)
	images = append(images, p.Images...)
	return append(images, img)
}

// WithoutImages returns a copy of the image list minus the given ids.
func (p *Project) WithoutImages(ids map[string]bool) []Image {
	images := make([]Image, 0, len(p.Images))
	for _, img := range p.Images {
		if !ids[img.ID] {
			images = append(images, img)
		}
	}
	return images
}
