package apierrors_test

import (
	"testing"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTranslator(t *testing.T) *apierrors.Translator {
	t.Helper()
	tr, err := apierrors.NewTranslator()
	require.NoError(t, err)
	return tr
}

func TestCreateError_English(t *testing.T) {
	tr := newTranslator(t)

	err := tr.CreateError(401, apierrors.MsgInvalidCredentials, apierrors.LanguageEn)
	assert.Equal(t, 401, err.ErrDetails.Code)
	assert.Equal(t, "Invalid email or password.", err.ErrDetails.Message)
	assert.Equal(t, "Code: 401, Message: Invalid email or password.", err.Error())
}

func TestCreateError_Danish(t *testing.T) {
	tr := newTranslator(t)

	err := tr.CreateError(404, apierrors.MsgTaskNotFound, "da-DK,da;q=0.9")
	assert.Equal(t, "Opgaven blev ikke fundet.", err.ErrDetails.Message)
}

func TestMessage_FallbacksToEnglishThenKey(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Task not found.", tr.Message(apierrors.MsgTaskNotFound, "fr"))
	assert.Equal(t, "noSuchKey", tr.Message("noSuchKey", apierrors.LanguageEn))
}

func TestEveryKeyIsTranslated(t *testing.T) {
	tr := newTranslator(t)

	keys := []string{
		apierrors.MsgInvalidPayload, apierrors.MsgInvalidCredentials, apierrors.MsgEmailTaken,
		apierrors.MsgUnauthorized, apierrors.MsgNotOwner, apierrors.MsgTokenExpired,
		apierrors.MsgRefreshTokenExpired, apierrors.MsgTaskNotFound, apierrors.MsgSubtaskNotFound,
		apierrors.MsgLabelNotFound, apierrors.MsgIDMismatch, apierrors.MsgInvalidDueDate,
		apierrors.MsgInvalidTaskOrLabel, apierrors.MsgLabelAlreadyAttached,
		apierrors.MsgLabelNotAttached, apierrors.MsgInternal,
	}
	for _, k := range keys {
		for _, lang := range []string{apierrors.LanguageEn, apierrors.LanguageDa} {
			assert.NotEqual(t, k, tr.Message(k, lang), "missing %s translation for %s", lang, k)
		}
	}
}

func TestNewTranslatorFromBundle(t *testing.T) {
	b := i18n.NewBundle(language.English)
	require.NoError(t, b.AddMessages(language.English, &i18n.Message{ID: "test_key", Other: "Test message"}))

	tr := apierrors.NewTranslatorFromBundle(b)
	assert.Equal(t, "Test message", tr.Message("test_key", apierrors.LanguageEn))
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, "da", apierrors.MatchLanguage("da-DK,da;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", apierrors.MatchLanguage("en-US"))
	assert.Equal(t, "en", apierrors.MatchLanguage("fr-FR"))
	assert.Equal(t, "en", apierrors.MatchLanguage(""))
}
