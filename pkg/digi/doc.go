// Package digi defines the time-tagged hit records produced by the detector decoders and the
// read-only, time-sorted streams the event builder consumes.
//
// A Stream is owned by its producer. The event builder never copies or mutates digis, it only
// records (detector kind, index) references into the streams.
package digi
