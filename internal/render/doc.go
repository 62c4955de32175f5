// Package render turns a toast notification into something a display surface
// can show: the HTML element used by the portfolio page, or a coloured
// terminal box. Message markup is sanitized before it is rendered.
package render
