package modal

// BaseCSS lays out covers and content boxes when a scrim document is
// rendered in a real browser: a fixed full-viewport dimmed cover with the
// content box centered inside it. Fade timing stays inline on each cover so
// per-modal durations survive serialization.
const BaseCSS = `.scrim-region {
  position: relative;
}
.scrim-cover {
  position: fixed;
  inset: 0;
  background: rgba(0, 0, 0, 0.55);
  display: flex;
  align-items: center;
  justify-content: center;
}
.scrim-content {
  background: #ffffff;
  color: #1a1b26;
  border-radius: 6px;
  padding: 1.5rem 2rem;
  max-width: 80vw;
  max-height: 80vh;
  overflow: auto;
}
.scrim-image {
  padding: 0;
  background: none;
}
`
