package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGroups_RejectsUnsupportedExtension(t *testing.T) {
	f := &File{OriginalName: "payload.exe", Size: 100}
	err := ValidateGroups(Group{
		Name:        "covers",
		Files:       []*File{f},
		AllowedExts: ImageExtensions,
	})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestValidateGroups_RejectsOversizedFile(t *testing.T) {
	f := &File{OriginalName: "big.pdf", Size: 60 * 1024 * 1024}
	err := ValidateGroups(Group{
		Name:        "documents",
		Files:       []*File{f},
		AllowedExts: DocumentExtensions,
		MaxBytes:    50 * 1024 * 1024,
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateGroups_RejectsMissingRequiredFile(t *testing.T) {
	err := ValidateGroups(Group{
		Name:        "documents",
		AllowedExts: DocumentExtensions,
		MinCount:    1,
	})
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestValidateGroups_RenamesOnSuccess(t *testing.T) {
	doc := &File{OriginalName: "Mon Livre Préféré.PDF", Size: 1024}
	cover := &File{OriginalName: "Éléphant cover!.jpg", Size: 512}
	err := ValidateGroups(
		Group{Name: "documents", Files: []*File{doc}, AllowedExts: DocumentExtensions, MinCount: 1},
		Group{Name: "covers", Files: []*File{cover}, AllowedExts: ImageExtensions},
	)
	assert.NoError(t, err)
	assert.Equal(t, "mon-livre-prefere.pdf", doc.OriginalName)
	assert.Equal(t, "elephant-cover.jpg", cover.OriginalName)
}

func TestValidateGroups_WholeBatchAborts(t *testing.T) {
	good := &File{OriginalName: "fine.pdf", Size: 10}
	bad := &File{OriginalName: "bad.exe", Size: 10}
	err := ValidateGroups(Group{
		Name:        "documents",
		Files:       []*File{good, bad},
		AllowedExts: DocumentExtensions,
	})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	// nothing renamed when the batch fails
	assert.Equal(t, "fine.pdf", good.OriginalName)
}
