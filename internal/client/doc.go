// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the Go counterpart of the browser forms: it talks to
// the postdesk HTTP API, keeps the session between invocations and handles
// password-reset links.
//
// Token claims are decoded here without verification. They only pre-fill
// values and catch obviously expired links; the server remains the trust
// root.
package client
