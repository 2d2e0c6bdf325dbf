package attestation

// SignedAttestation is a tamper-evident statement that a verification
// outcome was computed on a specific device. Payload decodes to the exact
// verification result that produced it; Signature is a keyed digest over
// Payload under the device signing key.
type SignedAttestation struct {
	Payload    string `json:"payload"`
	Signature  string `json:"signature"`
	DeviceID   string `json:"device_id"`
	AppVersion string `json:"app_version"`
}
