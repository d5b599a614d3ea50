package domain

// DefaultFeature is the bucket for files with no usable directory segment.
const DefaultFeature = "root"

// FeatureMapping groups files into a product area by directory convention.
type FeatureMapping struct {
	// Feature is the bucket name taken from the path.
	Feature string `json:"feature"`

	// Files are the member file paths, sorted.
	Files []string `json:"files"`

	// Functions are IDs of functions declared in member files.
	Functions []string `json:"functions"`

	// Description is a short human-readable label.
	Description string `json:"description"`
}
