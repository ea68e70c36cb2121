package service

import (
	"fmt"
	"strings"

	"artnotifier/internal/entity"
)

type (
	SecurityAlertKind string
	AccountUpdateKind string
)

const (
	SecurityAlertNewLogin       SecurityAlertKind = "new_login"
	SecurityAlertPasswordChange SecurityAlertKind = "password_change"
	SecurityAlert2FAEnabled     SecurityAlertKind = "2fa_enabled"
	SecurityAlert2FADisabled    SecurityAlertKind = "2fa_disabled"

	AccountUpdateProfile  AccountUpdateKind = "profile"
	AccountUpdateSettings AccountUpdateKind = "settings"
)

type template struct {
	category entity.Category
	priority entity.Priority
	title    string
	// message may contain one %s for the subject (artwork name).
	message string
}

// render fills the subject slot when the message has one; an empty subject
// renders as "".
func (t template) render(subject string) (title, message string) {
	if !strings.Contains(t.message, "%s") {
		return t.title, t.message
	}
	return t.title, fmt.Sprintf(t.message, subject)
}

var (
	welcomeTemplate = template{
		category: entity.CategoryWelcome,
		priority: entity.PriorityNormal,
		title:    "Welcome to NydArt Advisor!",
		message:  "Thank you for joining our community. Start by analyzing your first artwork!",
	}
	analysisCompleteTemplate = template{
		category: entity.CategoryAnalysisComplete,
		priority: entity.PriorityNormal,
		title:    "Analysis Complete!",
		message:  `Your artwork "%s" has been analyzed successfully. Check out the detailed results!`,
	}
	analysisFailedTemplate = template{
		category: entity.CategoryAnalysisFailed,
		priority: entity.PriorityHigh,
		title:    "Analysis Failed",
		message:  `Analysis of "%s" failed. Please try again or contact support if the issue persists.`,
	}
	artworkAddedTemplate = template{
		category: entity.CategoryArtworkAdded,
		priority: entity.PriorityLow,
		title:    "Artwork Added Successfully",
		message:  `Your artwork "%s" has been added to your collection.`,
	}

	securityAlertTemplates = map[SecurityAlertKind]template{
		SecurityAlertNewLogin: {
			title:   "New Login Detected",
			message: "We detected a new login to your account from a new device. If this wasn't you, please secure your account.",
		},
		SecurityAlertPasswordChange: {
			title:   "Password Changed",
			message: "Your password has been changed successfully.",
		},
		SecurityAlert2FAEnabled: {
			title:   "Two-Factor Authentication Enabled",
			message: "Two-factor authentication has been enabled for your account.",
		},
		SecurityAlert2FADisabled: {
			title:   "Two-Factor Authentication Disabled",
			message: "Two-factor authentication has been disabled for your account.",
		},
	}

	accountUpdateTemplates = map[AccountUpdateKind]template{
		AccountUpdateProfile: {
			title:   "Profile Updated",
			message: "Your profile information has been updated successfully.",
		},
		AccountUpdateSettings: {
			title:   "Settings Updated",
			message: "Your account settings have been updated successfully.",
		},
	}
)

func securityAlertTemplate(kind SecurityAlertKind, details string) template {
	t, ok := securityAlertTemplates[kind]
	if !ok {
		t = template{title: "Security Alert", message: details}
		if details == "" {
			t.message = "A security-related action was performed on your account."
		}
	}
	t.category = entity.CategorySecurityAlert
	t.priority = entity.PriorityHigh
	return t
}

func accountUpdateTemplate(kind AccountUpdateKind) template {
	t, ok := accountUpdateTemplates[kind]
	if !ok {
		t = template{title: "Account Updated", message: "Your account has been updated successfully."}
	}
	t.category = entity.CategoryAccountUpdate
	t.priority = entity.PriorityLow
	return t
}
