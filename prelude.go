package main

// defaultPrelude seeds a pod with short names for the basis and a few
// derived combinators. Definitions are themselves just programs; since
// none of them can make progress on an empty environment they bind as
// written.
const defaultPrelude = `
:i Apply
:unit Box
:cat Concatenate
:dup Copy
:pop Drop
:swap Swap
:y Fix
:twice Copy Concatenate Apply
:thrice Copy Copy Concatenate Concatenate Apply
`
