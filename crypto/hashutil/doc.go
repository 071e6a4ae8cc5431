// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package hashutil provides the BLAKE2b-512 fingerprint type used across the
// testament core to identify encoded keys and link sibling shares together.
package hashutil
