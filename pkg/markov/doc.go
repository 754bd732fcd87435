/*
Package markov builds n-gram Markov chains from text and walks them to produce
new text.

A Chains value maps every run of n consecutive words to the words observed
right after it. Successor lists keep duplicates, so sampling uniformly from a
list reproduces the corpus frequencies with no further weighting. Several texts
can be folded into the same Chains value with BuildChains or Generator.Train.

Generation starts from a uniformly chosen prefix and keeps appending uniformly
chosen successors until the current suffix was never seen followed by anything,
or, when sentence limiting is on, until an appended word ends in '.', '?', '!'
or a closing curly quote. Sample repeats generation until a caller-supplied
constraint such as a character limit is met. GenerateStream delivers the same
walk token by token over a channel.
*/
package markov
