// Package modifier holds the closed set of C# modifier keywords, their
// canonical ranks and the comparer used to keep a modifier list ordered.
//
// Declaration modifiers are ranked
//
//	new < public|protected|internal|private < const < static <
//	virtual|sealed|override|abstract < readonly < extern < unsafe <
//	volatile < async < partial
//
// Parameter modifiers form a separate scope: ref|out|in < params.
// Every row lives in one static table; Rank, Name, Lookup and FromToken are
// views over it.
package modifier
