package domain

// StageStatus is the stage or outcome of a document's pipeline run.
type StageStatus string

const (
	StageUploaded    StageStatus = "Uploaded"
	StageDigitizing  StageStatus = "Digitizing"
	StageClassifying StageStatus = "Classifying"
	StageExtracting  StageStatus = "Extracting"
	StageCompleted   StageStatus = "Completed"
	StageFailed      StageStatus = "Failed"
)

// IsTerminal reports whether no further transition is expected from s.
func (s StageStatus) IsTerminal() bool {
	return s == StageCompleted || s == StageFailed
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeTIFF FileType = "tiff"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeTIFF: "image/tiff",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
}

const (
	// GenerativeClassifierID selects the prompt-driven classification path.
	GenerativeClassifierID = "generative_classifier"

	// ClassificationPromptsName is the prompt bundle used by the generative classifier.
	ClassificationPromptsName = "classification"

	// SampleProjectID is the reserved id of the predefined sample project; only
	// extractions for this project are parameterized with prompt bundles.
	SampleProjectID = "00000000-0000-0000-0000-000000000001"
)

// AllowedContentTypes lists content types accepted by magic-byte detection.
// TIFF is not recognized by http.DetectContentType and is checked separately.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}
