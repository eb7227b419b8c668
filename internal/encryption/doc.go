// Package encryption provides authenticated encryption of text using ChaCha20-Poly1305
// or XChaCha20-Poly1305.
//
// Ciphertexts are returned as a text Envelope: a protobuf record holding the
// ciphertext and nonce, encoded as unpadded URL-safe base64. Every call draws a
// fresh nonce. Requires 32-byte keys.
package encryption
