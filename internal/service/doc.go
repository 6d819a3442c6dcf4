// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client's business logic on top of the transport
// and the stores:
//
//   - [Session] restores, replaces and forgets endpoint and token;
//   - [SyncService] rebuilds the secret store with a fresh walk;
//   - [MutationCoordinator] writes and deletes secrets, reloading on success;
//   - [EditForm] is the scratch collection behind the edit screen;
//   - [AuthService] and [HealthService] wrap the token and health probes;
//   - [ErrorSink] turns failures into pretty-printed reports for the UI.
package service
