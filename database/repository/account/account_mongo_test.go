package accountRepo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKey(msg string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: msg}}}
}

func TestTranslateInsertError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"email index", duplicateKey(`E11000 duplicate key error collection: portfolio.accounts index: email_unique dup key: { email: "a@x.com" }`), ErrEmailTaken},
		{"device index", duplicateKey(`E11000 duplicate key error collection: portfolio.accounts index: deviceId_unique dup key: { deviceId: "dev1" }`), ErrDeviceTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translateInsertError(tc.err), tc.want)
		})
	}
}

func TestTranslateInsertError_OtherErrorsAreWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := translateInsertError(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.NotErrorIs(t, err, ErrDeviceTaken)
}

func TestTranslateInsertError_DuplicateIDIsNotAConflict(t *testing.T) {
	err := translateInsertError(duplicateKey(`E11000 duplicate key error collection: portfolio.accounts index: id_1 dup key: { id: "acc-1" }`))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.NotErrorIs(t, err, ErrDeviceTaken)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}
