// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package identify classifies an arbitrary candidate string as one of the
// wire artifacts produced elsewhere in the module (an encrypted message
// part, or a Shamir chunk) and decodes it into a display-oriented view,
// without requiring the caller to know in advance which kind it is.
package identify
