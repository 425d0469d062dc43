package theme

// paletteTemplate is the base slide stylesheet. Placeholders are replaced by
// CompilePalette.
const paletteTemplate = `
/* slidepack theme generated from the project palette */

:root {
  --primary-color: {{primary}};
  --secondary-color: {{secondary}};
  --accent-color: {{accent}};

  --background-color: {{background}};
  --surface-color: {{surface}};

  --text-primary: {{textPrimary}};
  --text-secondary: {{textSecondary}};

  --border-color: {{border}};

  --font-family: 'Helvetica Neue', 'PingFang SC', 'Microsoft YaHei', Arial, sans-serif;
}

body {
  margin: 0;
  padding: 0;
  font-family: var(--font-family);
  background-color: var(--background-color);
  color: var(--text-primary);
  line-height: 1.6;
}

h1, h2, h3, h4, h5, h6 {
  color: var(--primary-color);
  line-height: 1.2;
  margin-top: 0;
}

h1 { font-size: 2.5em; margin-bottom: 0.5em; }
h2 { font-size: 2em; margin-bottom: 0.5em; }
h3 { font-size: 1.5em; margin-bottom: 0.5em; }

p {
  margin-bottom: 1em;
  color: var(--text-primary);
}

a {
  color: var(--primary-color);
  text-decoration: none;
}

a:hover {
  text-decoration: underline;
}

ul, ol {
  padding-left: 20px;
  margin-bottom: 1em;
}

li {
  margin-bottom: 0.5em;
}

img {
  max-width: 100%;
  height: auto;
  border-radius: 8px;
}

table {
  width: 100%;
  border-collapse: collapse;
  margin-bottom: 1em;
}

th, td {
  padding: 12px;
  border: 1px solid var(--border-color);
  text-align: left;
}

th {
  background-color: var(--surface-color);
  font-weight: bold;
}

blockquote {
  border-left: 4px solid var(--primary-color);
  padding-left: 20px;
  margin: 20px 0;
  font-style: italic;
  color: var(--text-secondary);
}

.button {
  display: inline-block;
  padding: 10px 20px;
  background-color: var(--primary-color);
  color: #ffffff;
  text-decoration: none;
  border-radius: 5px;
  border: none;
  cursor: pointer;
  font-size: 16px;
}

.button:hover {
  opacity: 0.9;
}

.button-secondary {
  background-color: transparent;
  color: var(--primary-color);
  border: 2px solid var(--primary-color);
}

.container {
  max-width: 1200px;
  margin: 0 auto;
  padding: 40px 20px;
}

.center {
  text-align: center;
}

.right {
  text-align: right;
}

.card {
  background-color: var(--surface-color);
  border: 1px solid var(--border-color);
  border-radius: 8px;
  padding: 20px;
  margin-bottom: 20px;
}

.grid {
  display: grid;
  gap: 20px;
}

.grid-2 {
  grid-template-columns: 1fr 1fr;
}

.grid-3 {
  grid-template-columns: 1fr 1fr 1fr;
}

@media (max-width: 768px) {
  .container {
    padding: 20px 15px;
  }

  .grid-2, .grid-3 {
    grid-template-columns: 1fr;
  }

  h1 { font-size: 2em; }
  h2 { font-size: 1.5em; }
  h3 { font-size: 1.2em; }
}
`
