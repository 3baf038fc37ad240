// Package pcmio moves tracks in and out of 16-bit mono PCM containers.
//
// WAV files are parsed chunk by chunk with go-audio/riff and written by
// Encoder; AIFF export and import go through go-audio/aiff. Samples travel
// between tracks and codecs as *audio.IntBuffer.
package pcmio
