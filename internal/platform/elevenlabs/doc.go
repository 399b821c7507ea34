// Package elevenlabs is a thin HTTP client for the ElevenLabs
// text-to-speech API. No official Go SDK exists, so requests are built by
// hand against the v1 REST surface.
package elevenlabs
