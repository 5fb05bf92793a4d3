// Package parser assembles tokens into values with an explicit frame stack.
//
// Each '(' pushes a list frame and each quote pushes a quote frame. A
// completed value is offered to the top frame: quote frames wrap it and pop,
// repeating until a list frame takes it or the stack is empty, in which case
// the value is emitted as a top-level value. Recursion is never used, so
// deeply nested input costs stack-buffer space only.
package parser
