package inquiry

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/model"
)

func TestWriteCSV_NeutralisesFormulas(t *testing.T) {
	message := "@SUM(A1:A9)"
	body, err := writeCSV([]model.StudentInquiry{{
		ID:           1,
		FullName:     `=HYPERLINK("http://evil","x")`,
		Email:        "a@b.c",
		Phone:        "+90 555",
		Message:      &message,
		LanguageCode: model.LanguageEnglish,
		Status:       model.InquiryStatusNew,
		CreatedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, `'=HYPERLINK("http://evil","x")`, row[1])
	assert.Equal(t, "a@b.c", row[2])
	assert.Equal(t, "'+90 555", row[3])
	assert.Equal(t, "'@SUM(A1:A9)", row[8])
	assert.Equal(t, "2024-03-01T10:00:00Z", row[13])
}

func TestCell(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"Ada":        "Ada",
		"-2+3":       "'-2+3",
		"\tcmd":      "'\tcmd",
		"plain=text": "plain=text",
	}
	for in, want := range cases {
		assert.Equal(t, want, cell(in), in)
	}
}
