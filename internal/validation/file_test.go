package validation

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func uploadHeader(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest("POST", "/", &buf)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, request.ParseMultipartForm(1<<20))

	return request.MultipartForm.File["file"][0]
}

func TestValidateFileAcceptsRealPNG(t *testing.T) {
	header := uploadHeader(t, "photo.png", pngMagic)
	require.NoError(t, ValidateFile(header, ImageConstraints))
}

func TestValidateFileRejectsFakeExtension(t *testing.T) {
	// Text content with an image extension fails magic-number detection.
	header := uploadHeader(t, "photo.png", []byte("just some text pretending"))
	require.Error(t, ValidateFile(header, ImageConstraints))
}

func TestValidateFileRejectsWrongExtension(t *testing.T) {
	header := uploadHeader(t, "photo.gif", pngMagic)
	require.Error(t, ValidateFile(header, ImageConstraints))
}

func TestValidateFileRejectsOversized(t *testing.T) {
	big := make([]byte, len(pngMagic)+int(ImageConstraints.MaxSize))
	copy(big, pngMagic)
	header := uploadHeader(t, "photo.png", big)
	require.Error(t, ValidateFile(header, ImageConstraints))
}

func TestValidateFileAcceptsPDFForDocuments(t *testing.T) {
	header := uploadHeader(t, "resume.pdf", []byte("%PDF-1.7 fake body"))
	require.NoError(t, ValidateFile(header, DocumentConstraints))
}

func TestValidateFileRejectsPDFForImages(t *testing.T) {
	header := uploadHeader(t, "resume.pdf", []byte("%PDF-1.7 fake body"))
	require.Error(t, ValidateFile(header, ImageConstraints))

	// Matching any one constraint set is enough.
	require.NoError(t, ValidateFile(header, ImageConstraints, DocumentConstraints))
}
