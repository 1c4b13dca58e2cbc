package bootstrap

// DefaultIgnoreFileContent lists the patterns written to a missing ignore-list file.
const DefaultIgnoreFileContent = `# Python cache
__pycache__/
.pytest_cache/
.mypy_cache/

# Compiled artifacts
*.py[cod]
*$py.class
*.so

# Virtual environments
venv/
.venv/
env/
ENV/

# Environment files
.env
.env.local

# IDE
.vscode/
.idea/
*.swp
*.swo

# OS metadata
.DS_Store
Thumbs.db

# Build output
build/
dist/
*.egg-info/

# Logs
*.log
logs/
`
