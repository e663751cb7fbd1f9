/*
Package ports defines the driven ports (interfaces) of the open-normal core.

These interfaces decouple the admission gate and relay from the host runtime,
so the same core works against a real browser native messaging transport, an
in-memory fake, or any other bridge.

# Key Interfaces

  - Messenger: one-shot native messaging (one request, at most one response).
*/
package ports
