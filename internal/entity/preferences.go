package entity

import (
	"fmt"
)

// ChannelPreferences is the per-channel block of a PreferenceMatrix.
type ChannelPreferences struct {
	Enabled    bool              `json:"enabled"`
	Categories map[Category]bool `json:"categories,omitempty"`
}

// PreferenceMatrix holds a user's opt-in flags. Push notifications surface in
// the app inbox, so they are governed by the InApp block.
type PreferenceMatrix struct {
	Email ChannelPreferences `json:"email"`
	SMS   ChannelPreferences `json:"sms"`
	InApp ChannelPreferences `json:"inApp"`
}

func (m PreferenceMatrix) block(channel Channel) (ChannelPreferences, bool) {
	switch channel {
	case ChannelEmail:
		return m.Email, true
	case ChannelSMS:
		return m.SMS, true
	case ChannelInApp, ChannelPush:
		return m.InApp, true
	}
	return ChannelPreferences{}, false
}

// IsEnabled reports whether a notification of the given category may be
// created on the given channel. A category missing from the channel's map
// counts as enabled.
func (m PreferenceMatrix) IsEnabled(channel Channel, category Category) bool {
	prefs, ok := m.block(channel)
	if !ok || !prefs.Enabled {
		return false
	}
	allowed, present := prefs.Categories[category]
	if !present {
		return true
	}
	return allowed
}

// Validate rejects category keys outside the closed category set.
func (m PreferenceMatrix) Validate() error {
	for name, prefs := range map[string]ChannelPreferences{
		"email": m.Email,
		"sms":   m.SMS,
		"inApp": m.InApp,
	} {
		for category := range prefs.Categories {
			if !category.IsValid() {
				return fmt.Errorf("%s: unknown category %q: %w", name, category, ErrInvalidData)
			}
		}
	}
	return nil
}

// DefaultPreferences is the matrix a user gets before ever saving one.
func DefaultPreferences() PreferenceMatrix {
	all := func() map[Category]bool {
		return map[Category]bool{
			CategoryWelcome:          true,
			CategorySecurityAlert:    true,
			CategoryAnalysisComplete: true,
			CategoryAnalysisFailed:   true,
			CategoryAccountUpdate:    true,
			CategorySubscription:     true,
			CategoryArtworkAdded:     true,
			CategoryArtworkUpdated:   true,
			CategorySystemAlert:      true,
		}
	}

	return PreferenceMatrix{
		Email: ChannelPreferences{Enabled: true, Categories: all()},
		SMS: ChannelPreferences{
			Enabled: false,
			Categories: map[Category]bool{
				CategorySecurityAlert:    true,
				CategoryAnalysisComplete: true,
				CategoryAnalysisFailed:   true,
				CategoryAccountUpdate:    false,
				CategorySubscription:     true,
				CategorySystemAlert:      true,
			},
		},
		InApp: ChannelPreferences{Enabled: true, Categories: all()},
	}
}
