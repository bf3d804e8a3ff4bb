// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// upload-desk server handlers, middleware and services.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. The web
// client matches on some of them, so the wording is part of the API.
package app

// Authentication.
const (
	MsgRegistrationSuccessful = "Registration successful. You can now log in."
	MsgRegistrationFailed     = "Registration failed. Please check the provided data."

	MsgLoginSuccessful = "Login successful"
	MsgLoginFailed     = "Login failed. Please check your credentials."

	// MsgMissingCredentials is reported when username or password is absent
	// from a login request.
	MsgMissingCredentials = "Must include username and password."

	// MsgInvalidCredentials covers an unknown user, a wrong password and a
	// deactivated account alike.
	MsgInvalidCredentials = "Unable to log in with provided credentials."

	MsgLogoutSuccessful = "Logout successful"
	MsgNoActiveToken    = "No active token found"
	MsgLogoutFailed     = "Logout failed"

	MsgTokenRefreshed     = "Token refreshed successfully"
	MsgTokenRefreshFailed = "Token refresh failed"

	MsgUsernameTaken = "A user with that username already exists."
	MsgEmailTaken    = "A user with this email already exists."
)

// Exception class errors rendered in the {error, message, details} envelope.
const (
	MsgNotAuthenticated  = "Authentication credentials were not provided."
	MsgInvalidToken      = "Invalid token."
	MsgUserInactive      = "User inactive or deleted."
	MsgPermissionDenied  = "You do not have permission to perform this action."
	MsgNotFound          = "Not found."
	MsgMethodNotAllowed  = "Method not allowed."
	MsgThrottled         = "Request was throttled. Please try again later."
	MsgCSRFFailed        = "CSRF verification failed."
	MsgInternalError     = "A server error occurred."
	MsgDefaultError      = "An error occurred"
	MsgInvalidJSON       = "Invalid JSON"
	MsgMalformedRequest  = "Malformed request."
	MsgUnsupportedFormat = "Unsupported media type in request."
)

// Uploads.
const (
	MsgFileUploaded     = "File uploaded successfully."
	MsgFileUploadFailed = "Upload failed. Please check the provided file."
	MsgFileDeleted      = "File deleted successfully."

	// MsgFileTypeNotAllowed lists the accepted extensions in the order the
	// web client shows them.
	MsgFileTypeNotAllowed = "File type not allowed. Allowed types: docx, jpeg, jpg, md, pdf, png."
	MsgFileTooLarge       = "File size exceeds the maximum allowed size of 20 MB."

	MsgFileNotFound     = "The requested file was not found."
	MsgFileAccessDenied = "You do not have permission to access this file."
)

// Administration.
const (
	MsgUserActivated   = "User activated"
	MsgUserDeactivated = "User deactivated"
	MsgRoleUpdated     = "Role updated"
	MsgUserNotFound    = "User not found."
	MsgInvalidRole     = "Invalid role."
)
