package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripGutenberg(t *testing.T) {
	in := "The Project Gutenberg eBook\r\n*** START OF THE PROJECT GUTENBERG EBOOK WAR AND PEACE ***\r\n\r\nWell, Prince.\r\n\r\n*** END OF THE PROJECT GUTENBERG EBOOK ***\r\nlicense"
	require.Equal(t, "Well, Prince.", string(stripGutenberg([]byte(in))))

	require.Equal(t, "plain text", string(stripGutenberg([]byte("  plain text\n"))))
}
