package security

import (
	"strings"

	"ui_harness/domain/entities"
	"ui_harness/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const mask = "********"

var sensitiveKeywords = []string{
	"password", "passwd", "pass", "secret", "token",
	"otp", "cvv", "api-key", "apikey",
}

type Redactor struct {
	logger   *logrus.Logger
	keywords []string
}

// NewRedactor - creates a redactor; extra keywords widen what counts as secret
func NewRedactor(logger *logrus.Logger, extra ...string) *Redactor {
	keywords := append([]string(nil), sensitiveKeywords...)
	for _, k := range extra {
		keywords = append(keywords, strings.ToLower(k))
	}
	return &Redactor{
		logger:   logger,
		keywords: keywords,
	}
}

func (r *Redactor) IsSensitive(step entities.Step) bool {
	if step.Operation != entities.OpFill {
		return false
	}

	// Check the selector and the description of the field being filled
	lowerSelector := strings.ToLower(string(step.Target))
	lowerDesc := strings.ToLower(step.Description)

	for _, keyword := range r.keywords {
		if strings.Contains(lowerSelector, keyword) || strings.Contains(lowerDesc, keyword) {
			return true
		}
	}

	return false
}

func (r *Redactor) Describe(step entities.Step) string {
	if r.IsSensitive(step) {
		if r.logger != nil {
			r.logger.WithField("selector", step.Target).Debug("masking sensitive value")
		}
		return mask
	}

	if step.Operation.IsAction() {
		return step.Value
	}
	return step.Expected
}

// Ensure Redactor implements Redactor interface
var _ interfaces.Redactor = (*Redactor)(nil)
