package utils

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulpatterns-backend/models"
)

func TestAppointmentICS(t *testing.T) {
	app := models.Appointment{
		ID:          "1700000000000",
		ClientName:  "Ana",
		Phone:       "+57300111",
		Description: "Fine line rose",
		Date:        "2024-03-01",
		Time:        "10:00",
	}

	out, err := AppointmentICS(app)
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Tattoo: Ana")
	assert.Contains(t, out, "DESCRIPTION:Fine line rose")
	assert.Contains(t, out, "UID:appointment-1700000000000@soulpatterns")
}

func TestAppointmentICSRejectsBadSlot(t *testing.T) {
	_, err := AppointmentICS(models.Appointment{ID: "x", Date: "not-a-date", Time: "10:00"})
	assert.Error(t, err)
}

func TestStencilPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	out, err := StencilPDF(EncodeDataURL(buf.Bytes(), "image/png"), 10)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
}

func TestStencilPDFRejectsBadInput(t *testing.T) {
	_, err := StencilPDF("data:image/png;base64,AAAA", 0)
	assert.Error(t, err, "non-positive size")

	_, err = StencilPDF("data:image/gif;base64,AAAA", 10)
	assert.Error(t, err, "unsupported image type")
}
