// Package pyenv talks to a Python interpreter through subprocesses. It lists
// installed packages with pip, reads the interpreter version, checks it against
// a comma-separated requirement and resolves which interpreter to use when none
// is given explicitly.
package pyenv
