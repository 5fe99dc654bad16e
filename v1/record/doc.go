// Package record defines the log severity levels and the record value
// produced by every logging call.
//
// Level names follow the java.util.logging convention the rest of the
// tooling around this facade expects on the wire: SEVERE, WARNING, INFO,
// FINE and FINER, with ALL and OFF as threshold-only values. The numeric
// ordering follows zapcore (more severe is greater) so levels translate
// directly into the host runtime's enablers.
package record
