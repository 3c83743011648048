package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilePrepareSave(t *testing.T) {
	owner := &User{Avatar: "BO"}

	p := &Profile{UserID: 1}
	p.PrepareSave(owner)
	assert.Equal(t, "BO", p.Avatar)

	owner.Avatar = "ZA"
	p.PrepareSave(owner)
	assert.Equal(t, "BO", p.Avatar, "avatar is sticky once copied")
}

func TestProfilePrepareSaveTruncatesOverride(t *testing.T) {
	p := &Profile{}
	p.PrepareSave(&User{Avatar: "custom"})
	assert.Equal(t, "cu", p.Avatar)
}

func TestProfilePrepareSaveEmptyOwnerAvatar(t *testing.T) {
	p := &Profile{}
	p.PrepareSave(&User{})
	assert.Empty(t, p.Avatar)

	p.PrepareSave(nil)
	assert.Empty(t, p.Avatar)
}

func TestProfileValidate(t *testing.T) {
	require.NoError(t, (&Profile{FullName: "Bob", Avatar: "BO", Bio: "hi"}).Validate())
	require.ErrorIs(t, (&Profile{FullName: strings.Repeat("f", MaxFullNameLength+1)}).Validate(), ErrValidation)
	require.ErrorIs(t, (&Profile{Avatar: "ABC"}).Validate(), ErrValidation)
	require.ErrorIs(t, (&Profile{Bio: strings.Repeat("b", MaxBioLength+1)}).Validate(), ErrValidation)
}
