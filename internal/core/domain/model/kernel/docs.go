// Package kernel holds the primitives shared by every aggregate of the
// fulfillment domain: the UUID identifier value object and the Clock used to
// stamp lifecycle timestamps.
package kernel
