// Package render defines the narrow template-rendering contract shared by the
// engine adapters in this module: one required Render operation, convenience
// entry points that layer defaults on top of it, and the single error kind
// every rendering failure is reported as.
package render
