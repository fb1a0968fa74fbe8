// Package metadata records what a collection run saved.
//
// A Manifest lists every image written for one provider, with the URL it was
// downloaded from and its size, plus the reason pagination ended. The
// collector writes it next to the images as {provider}_manifest.json (or
// .yaml) when output.save_manifest is enabled.
package metadata
