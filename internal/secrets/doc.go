// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secrets models a single leaf of the secret tree: the ordered
// name/value entries stored at one path.
//
// A [Collection] built by [FromServerPayload] is canonical and shared by the
// store and the UI; it must not be modified in place. Editing always starts
// from [Collection.Edit], which returns an independent copy.
package secrets
