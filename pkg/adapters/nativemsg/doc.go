/*
Package nativemsg implements the browser native messaging transport.

A native host is an executable described by a JSON manifest named after the
host (for example fi.ssrc.open_normal.json) in one of the browser's
NativeMessagingHosts directories. The browser starts the host with the caller
origin as its first argument and exchanges messages over stdin/stdout, each
message being a 32-bit length in native byte order followed by UTF-8 JSON.

Messenger implements ports.Messenger for one-shot requests: it starts the host,
writes one message, reads one response and lets the host exit.
*/
package nativemsg
