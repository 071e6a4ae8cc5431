// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package testament

import "github.com/google/uuid"

// Envelope is a non-secret display wrapper around a SecuredMessage: a
// title, a recipient list, and a stable opaque identifier hosts can use to
// correlate an envelope without touching any key material. It owns no
// cryptographic state beyond what SecureMessage already produced and
// performs no I/O or persistence of its own.
type Envelope struct {
	ID         uuid.UUID
	Title      string
	Recipients []string
	Secured    SecuredMessage
}

// NewEnvelope wraps secured with a display title and recipient list,
// minting a fresh random identifier.
func NewEnvelope(title string, recipients []string, secured SecuredMessage) Envelope {
	return Envelope{
		ID:         uuid.New(),
		Title:      title,
		Recipients: append([]string(nil), recipients...),
		Secured:    secured,
	}
}
