// Package subtitles serializes translated segments into an ASS subtitle
// track suitable for ffmpeg burn-in. The document layout is fixed: one style,
// bottom-center placement, and an optional right-to-left override applied to
// every event line.
package subtitles
