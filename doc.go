/* Package main: gocat -- a tiny concatenative rewriting machine

gocat evaluates programs in a minimal concatenative language: a program
is a whitespace-separated sequence of tokens, read left to right, and
evaluation is term rewriting over that sequence rather than function
application over an AST.

Square brackets quote a program fragment, turning it into an inert
value; evaluation moves quotations onto a value stack (the
"environment") and primitive instructions rewrite the top of that
stack. The canonical basis is:

	[A] Apply             => A
	[A] Box               => [[A]]
	[A] [B] Concatenate   => [A B]
	[A] Copy              => [A] [A]
	[A] Drop              =>
	[A] [B] Swap          => [B] [A]
	[A] Fix               => [[A] Fix A]

Two further names, Prop and Forall, are reserved: they never rewrite,
and always defer themselves for some outer layer to interpret.

An instruction short of operands is not an error: it is "stuck", and it
freezes -- along with every value produced so far -- into a thunk list
that is spliced back into the result. Likewise running out of fuel (the
per-evaluation step budget) is not an error: evaluation always yields a
well-formed term, and feeding that term back in with more fuel resumes
exactly where it left off. A term that cannot rewrite any further
evaluates to itself.

All terms live in a fixed-capacity, caller-collected heap. Pointers
into the heap carry a generation stamp, so a pointer held across a
sweep into a freed (or since reused) slot fails with a checked null
error rather than reading stale data.

The session layer, called a pod, owns a heap and a dictionary of named
bindings:

	:name PROGRAM    evaluate PROGRAM and bind the result to name
	~name            remove the binding for name
	PROGRAM          evaluate and print

Bare lowercase words evaluate by splicing in their bound definition at
execution time; unbound words are stuck. The dictionary entries are the
garbage collector roots: after every evaluation the pod marks each
binding and sweeps everything else. A pod dictionary renders as ":name
value" lines, which is also its file format.
*/
package main
