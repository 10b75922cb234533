// ABOUTME: Audio decoder package for payloads and clip files
// ABOUTME: Provides base64 payload decoding and PCM, WAV, MP3, FLAC decoders
// Package decode turns encoded audio into PCM samples.
//
// DecodePayload reverses the base64 transport encoding used by the speech
// API. The Decoder interface and NewPCM convert raw PCM bytes to int32
// samples in 24-bit range for playback. DecodeFile loads a whole WAV, MP3 or
// FLAC file into memory for the standalone clip player.
//
// Example:
//
//	pcm, err := decode.DecodePayload(inlineData)
//	decoder, err := decode.NewPCM(audio.SpeechFormat())
//	samples, err := decoder.Decode(pcm)
package decode
