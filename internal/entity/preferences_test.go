package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceMatrix_IsEnabled(t *testing.T) {
	m := PreferenceMatrix{
		Email: ChannelPreferences{Enabled: false, Categories: map[Category]bool{CategoryAnalysisComplete: true}},
		SMS:   ChannelPreferences{Enabled: true, Categories: map[Category]bool{CategoryAccountUpdate: false}},
		InApp: ChannelPreferences{Enabled: true, Categories: map[Category]bool{CategoryWelcome: true}},
	}

	assert.False(t, m.IsEnabled(ChannelEmail, CategoryAnalysisComplete), "disabled channel wins over category flag")
	assert.True(t, m.IsEnabled(ChannelInApp, CategoryAnalysisComplete), "absent category is allowed")
	assert.True(t, m.IsEnabled(ChannelInApp, CategoryWelcome))
	assert.False(t, m.IsEnabled(ChannelSMS, CategoryAccountUpdate))
	assert.True(t, m.IsEnabled(ChannelSMS, CategorySecurityAlert))
	assert.True(t, m.IsEnabled(ChannelPush, CategoryAnalysisComplete), "push follows in-app")
	assert.False(t, m.IsEnabled(Channel("fax"), CategoryWelcome))
}

func TestPreferenceMatrix_NilCategoriesFailOpen(t *testing.T) {
	m := PreferenceMatrix{InApp: ChannelPreferences{Enabled: true}}

	for _, c := range Categories() {
		assert.True(t, m.IsEnabled(ChannelInApp, c), c)
	}
}

func TestDefaultPreferences(t *testing.T) {
	d := DefaultPreferences()

	assert.True(t, d.IsEnabled(ChannelEmail, CategoryWelcome))
	assert.False(t, d.IsEnabled(ChannelSMS, CategorySecurityAlert))
	assert.False(t, d.SMS.Categories[CategoryAccountUpdate])
	assert.True(t, d.IsEnabled(ChannelInApp, CategoryPasswordReset))
	assert.NoError(t, d.Validate())
}

func TestPreferenceMatrix_Validate(t *testing.T) {
	m := DefaultPreferences()
	m.InApp.Categories["promo"] = true

	assert.ErrorIs(t, m.Validate(), ErrInvalidData)
}

func TestPageRequest_Normalize(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, Limit: 20}, PageRequest{}.Normalize(20, 100))
	assert.Equal(t, PageRequest{Page: 1, Limit: 20}, PageRequest{Page: -3, Limit: -1}.Normalize(20, 100))
	assert.Equal(t, PageRequest{Page: 2, Limit: 100}, PageRequest{Page: 2, Limit: 500}.Normalize(20, 100))
	assert.Equal(t, PageRequest{Page: MaxPage, Limit: 20}, PageRequest{Page: math.MaxInt}.Normalize(20, 100))
	assert.Equal(t, uint64(10), PageRequest{Page: 3, Limit: 5}.Offset())
}

func TestPageRequest_OffsetDoesNotOverflow(t *testing.T) {
	assert.Zero(t, PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, uint64(40), PageRequest{Page: 3, Limit: 20}.Offset())

	p := PageRequest{Page: math.MaxInt, Limit: MaxPageLimit}.Normalize(DefaultPageLimit, MaxPageLimit)
	off := p.Offset()
	assert.Equal(t, uint64(MaxPage-1)*MaxPageLimit, off)
	assert.Less(t, off, uint64(math.MaxInt64))

	raw := PageRequest{Page: math.MaxInt, Limit: math.MaxInt}.Offset()
	assert.Less(t, raw, uint64(math.MaxInt64))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 20))
	assert.Equal(t, int64(1), TotalPages(1, 20))
	assert.Equal(t, int64(1), TotalPages(20, 20))
	assert.Equal(t, int64(2), TotalPages(21, 20))
	assert.Equal(t, int64(17), TotalPages(50, 3))
}
