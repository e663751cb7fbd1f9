/*
Package domain contains the core types shared by the open-normal components.

It defines the vocabulary of a single trigger event as it moves through the
system: the rejection reasons produced by the admission gate, the request and
outcome of the native-messaging relay, the per-event state machine and the
lifecycle hooks used for observability. The package is pure and free of I/O.

# Key Entities

  - RejectionReason / Rejection: why a candidate URL was refused.
  - RelayRequest: the fixed channel identifier plus the {"URL": ...} message.
  - RelayOutcome: the opaque host response or a ChannelError.
  - State: Idle, Validating, Accepted, Rejected, Relaying, Succeeded, Failed.
*/
package domain
