// Package web serves the flake in a browser.
//
// The page carries the six parameter inputs, filled from the request query.
// Each websocket connection owns one controller driven by its own ticker:
// frames arrive as SVG markup, form submissions go back over the socket, and
// the server answers every submission with the new query, which the page
// applies with history.replaceState so the address bar always holds a link
// to the current flake.
package web
