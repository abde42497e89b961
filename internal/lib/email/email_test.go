package email

import (
	"errors"
	"testing"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(sender emailSender) *Client {
	logger := zerolog.Nop()
	return &Client{sender: sender, from: "registry@college.test", logger: &logger}
}

func TestPreviewDataRendersEveryTemplate(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, html)
	}
}

func TestRender_StudentsRemoved(t *testing.T) {
	html, err := Render(TemplateStudentsRemoved, PreviewData[TemplateStudentsRemoved])
	require.NoError(t, err)

	assert.Contains(t, html, "2 student(s) were removed")
	assert.Contains(t, html, "John Doe")
	assert.Contains(t, html, "<td>12</td>")
}

func TestRender_EscapesNames(t *testing.T) {
	html, err := Render(TemplateStudentsRemoved, StudentsRemovedReport{
		Students: []model.Student{{ID: 1, Name: "<b>Ann</b>"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Ann</b>")
	assert.Contains(t, html, "&lt;b&gt;Ann&lt;/b&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestSendStudentsRemovedEmail(t *testing.T) {
	sender := &fakeSender{}
	client := newTestClient(sender)

	err := client.SendStudentsRemovedEmail("registrar@college.test", StudentsRemovedReport{
		Reason:   "they had fewer than 2 marks",
		Students: []model.Student{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Cara"}},
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	req := sender.sent[0]
	assert.Equal(t, []string{"registrar@college.test"}, req.To)
	assert.Equal(t, "College Records <registry@college.test>", req.From)
	assert.Equal(t, "3 students removed from the register", req.Subject)
	assert.Contains(t, req.Html, "Cara")
}

func TestSendEmail_PropagatesProviderError(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := client.SendStudentsRemovedEmail("registrar@college.test", StudentsRemovedReport{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
