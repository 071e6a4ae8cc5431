// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package bytesutil provides a small owned byte buffer used to carry key and
// message material across the testament core. It prints safely in debug
// contexts and can be wiped in place once its logical role ends.
package bytesutil
