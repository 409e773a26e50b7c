// Package modulation implements a time-modulated delay: a one-second mono
// history, a sine LFO that moves the read position, linear fractional reads
// and a feedback write.
//
// Per frame the engine
//
//  1. reads the wet tap at cursor - d + lfo*d*amount,
//  2. averages the dry channels into one mono sample,
//  3. adds wet*wetmix to every channel,
//  4. writes mono + wet*feedback at the cursor,
//  5. advances the cursor and the LFO.
//
// With amount = 0 it is a plain echo; short delays with modulation give
// chorus, very short delays with feedback give flanging.
package modulation
