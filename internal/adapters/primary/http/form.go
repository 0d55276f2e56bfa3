package http

import "html/template"

// formTemplate is the submission form served at the root path. The page is
// static; html/template keeps it consistent with any future dynamic fields.
var formTemplate = template.Must(template.New("form").Parse(formHTML))

const formHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Pitch Deck Generator</title>
<style>
  body { font-family: sans-serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; }
  label { display: block; margin-top: 1rem; font-weight: bold; }
  input[type=text], textarea, select { width: 100%; padding: 0.4rem; box-sizing: border-box; }
  textarea { height: 4rem; }
  .hint { font-weight: normal; color: #555; font-size: 0.85rem; }
  button { margin-top: 1.5rem; padding: 0.6rem 1.6rem; }
</style>
</head>
<body>
<h1>Pitch Deck Generator</h1>
<p>Describe your business and receive an investor pitch deck drafted by AI.</p>
<form action="/generate" method="post" enctype="multipart/form-data">
  <label>Business name
    <input type="text" name="name" required>
  </label>
  <label>Vision <span class="hint">one sentence describing the company's purpose</span>
    <textarea name="vision" required></textarea>
  </label>
  <label>Problem <span class="hint">the unsolved problem customers face</span>
    <textarea name="problem" required></textarea>
  </label>
  <label>Solution <span class="hint">how the business solves it</span>
    <textarea name="solution" required></textarea>
  </label>
  <label>Competitive advantage <span class="hint">optional</span>
    <textarea name="advantage"></textarea>
  </label>
  <label>Market <span class="hint">optional</span>
    <textarea name="market"></textarea>
  </label>
  <label>Team <span class="hint">optional</span>
    <textarea name="team"></textarea>
  </label>
  <label>Logo <span class="hint">optional; png, jpg, or pdf</span>
    <input type="file" name="logo" accept=".png,.jpg,.jpeg,.pdf">
  </label>
  <label>Output format
    <select name="format">
      <option value="pdf">PDF</option>
      <option value="pptx">PowerPoint (pptx)</option>
    </select>
  </label>
  <button type="submit">Generate deck</button>
</form>
</body>
</html>
`
